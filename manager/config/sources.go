package config

// DefaultSources is the built-in list of hosts and adblock style blocklists,
// fetched in this order.
var DefaultSources = []string{
	"https://raw.githubusercontent.com/DandelionSprout/adfilt/master/Alternate%20versions%20Anti-Malware%20List/AntiMalwareHosts.txt",
	"https://raw.githubusercontent.com/Goooler/1024_hosts/master/hosts",
	"https://tgc.cloud/downloads/hosts.txt",
	"https://o0.pages.dev/mini/hosts.txt",
	"https://o0.pages.dev/Lite/hosts.txt",
	"https://o0.pages.dev/Pro/hosts.txt",
	"https://o0.pages.dev/Xtra/hosts.txt",
	"https://badmojr.gitlab.io/addons_1hosts/kidSaf/hosts.txt",
	"https://raw.githubusercontent.com/jmhenrique/adblock/master/etc/adblock_hosts",
	"https://raw.githubusercontent.com/ABPindo/indonesianadblockrules/master/subscriptions/hosts.txt",
	"https://raw.githubusercontent.com/FadeMind/hosts.extras/master/add.2o7Net/hosts",
	"https://raw.githubusercontent.com/FadeMind/hosts.extras/master/add.Risk/hosts",
	"https://raw.githubusercontent.com/FadeMind/hosts.extras/master/add.Spam/hosts",
	"https://raw.githubusercontent.com/r-a-y/mobile-hosts/master/AdguardDNS.txt",
	"https://raw.githubusercontent.com/r-a-y/mobile-hosts/master/AdguardMobileAds.txt",
	"https://raw.githubusercontent.com/r-a-y/mobile-hosts/master/AdguardMobileSpyware.txt",
	"https://raw.githubusercontent.com/r-a-y/mobile-hosts/master/AdguardApps.txt",
	"https://getadhell.com/standard-package.txt",
	"https://repo.andnixsh.com/adblocker/hosts",
	"https://raw.githubusercontent.com/furkun/AndroidSecurityHosts/main/hosts",
	"https://raw.githubusercontent.com/yhonay/antipopads/master/hosts",
	"https://raw.githubusercontent.com/CyanideBrother/anti-pr0n/master/hosts",
	"https://raw.githubusercontent.com/anudeepND/blacklist/master/adservers.txt",
	"https://raw.githubusercontent.com/anudeepND/blacklist/master/CoinMiner.txt",
	"https://raw.githubusercontent.com/anudeepND/blacklist/master/facebook.txt",
	"https://asc.hk/adplus.txt",
	"https://raw.githubusercontent.com/mitchellkrogza/Badd-Boyz-Hosts/master/hosts",
	"https://www.hostsfile.org/Downloads/hosts.txt",
	"https://paulgb.github.io/BarbBlock/blacklists/hosts-file.txt",
	"https://raw.githubusercontent.com/bjornstar/hosts/master/hosts",
	"https://mkb2091.github.io/blockconvert/output/hosts.txt",
	"https://sysctl.org/cameleon/hosts",
	"https://raw.githubusercontent.com/cb-software/CB-Malicious-Domains/master/block_lists/hosts",
	"https://gitlab.com/ZeroDot1/CoinBlockerLists/raw/master/hosts",
	"https://gitlab.com/ZeroDot1/CoinBlockerLists/raw/master/hosts_browser",
	"https://gitlab.com/ZeroDot1/CoinBlockerLists/raw/master/hosts_optional",
	"https://raw.githubusercontent.com/bongochong/CombinedPrivacyBlockLists/master/newhosts-final.hosts",
	"https://raw.githubusercontent.com/Cybo1927/Hosts/master/Fake%20News",
	"https://raw.githubusercontent.com/Cybo1927/Hosts/master/Hosts",
	"https://raw.githubusercontent.com/DataMaster-2501/DataMaster-Android-AdBlock-Hosts/master/hosts",
	"https://raw.githubusercontent.com/dnswarden/blocklist/master/blacklist-formats/hosts",
	"https://raw.githubusercontent.com/MetaMask/eth-phishing-detect/master/src/hosts.txt",
	"https://raw.githubusercontent.com/kowith337/PersonalFilterListCollection/master/hosts/hosts_facebook0.txt",
	"https://hostfiles.frogeye.fr/firstparty-trackers-hosts.txt",
	"https://raw.githubusercontent.com/jerryn70/GoodbyeAds/master/Hosts/GoodbyeAds.txt",
	"https://raw.githubusercontent.com/kowith337/PersonalFilterListCollection/master/hosts/hosts_google_adservice_id.txt",
	"https://raw.githubusercontent.com/Hakame-kun/uBlock-Filters-Indonesia/master/Windows%20Host/hosts",
	"https://nixnet.services/hosts.txt",
	"https://raw.githubusercontent.com/michaeltrimm/hosts-blocking/master/_hosts.txt",
	"https://v.firebog.net/hosts/static/HPHosts/HostsAdServers.txt",
	"https://v.firebog.net/hosts/static/HPHosts/Hostsemd.txt",
	"https://v.firebog.net/hosts/static/HPHosts/Hostsexp.txt",
	"https://v.firebog.net/hosts/static/HPHosts/Hostsfsa.txt",
	"https://v.firebog.net/hosts/static/HPHosts/Hostsgrm.txt",
	"https://v.firebog.net/hosts/static/HPHosts/Hostsmmt.txt",
	"https://v.firebog.net/hosts/static/HPHosts/Hostspha.txt",
	"https://raw.githubusercontent.com/infinitytec/blocklists/master/ads-and-trackers.txt",
	"https://raw.githubusercontent.com/infinitytec/blocklists/master/scams-and-phishing.txt",
	"https://tgc.cloud/downloads/iOSAds.txt",
	"https://gitlab.com/intr0/iVOID.GitLab.io/raw/master/iVOID.hosts",
	"https://raw.githubusercontent.com/lewisje/jansal/master/adblock/hosts",
	"https://www.github.developerdan.com/hosts/lists/ads-and-tracking-extended.txt",
	"https://www.github.developerdan.com/hosts/lists/amp-hosts-extended.txt",
	"https://www.github.developerdan.com/hosts/lists/tracking-aggressive-extended.txt",
	"https://raw.githubusercontent.com/w13d/adblockListABP-PiHole/master/list.txt",
	"https://adblock.mahakala.is/",
	"https://raw.githubusercontent.com/biroloter/Mobile-Ad-Hosts/master/hosts",
	"https://winhelp2002.mvps.org/hosts.txt",
	"https://raw.githubusercontent.com/nickspaargaren/no-google/master/categories/doubleclick.txt",
	"https://raw.githubusercontent.com/hoshsadiq/adblock-nocoin-list/master/hosts.txt",
	"https://hosts.nfz.moe/full/hosts",
	"https://raw.githubusercontent.com/notracking/hosts-blocklists/master/hostnames.txt",
	"https://hosts.oisd.nl/basic/",
	"https://hosts.oisd.nl/",
	"https://hosts.oisd.nl/nsfw/",
	"https://curben.gitlab.io/malware-filter/urlhaus-filter-hosts-online.txt",
	"https://gitlab.com/Kurobeats/phishing_hosts/raw/master/hosts",
	"https://curben.gitlab.io/malware-filter/phishing-filter-hosts.txt",
	"https://raw.githubusercontent.com/furkun/Anti-IP-Grabber-Hosts/main/hosts",
	"https://curben.gitlab.io/malware-filter/pup-filter-hosts.txt",
	"https://raw.githubusercontent.com/Rhys-H/hosts-list/master/HostsList.txt",
	"https://raw.githubusercontent.com/durablenapkin/scamblocklist/master/hosts.txt",
	"https://sebsauvage.net/hosts/hosts",
	"https://raw.githubusercontent.com/smed79/blacklist/master/hosts.txt",
	"https://raw.githubusercontent.com/nathanaccidentally/SystemHostsBlocker/master/hosts",
	"https://raw.githubusercontent.com/StevenBlack/hosts/master/alternates/fakenews-gambling/hosts",
	"https://raw.githubusercontent.com/Th3M3/blocklists/master/malware.list",
	"https://hostsfile.mine.nu/hosts0.txt",
	"https://raw.githubusercontent.com/iam-py-test/my_filters_001/main/Alternative%20list%20formats/antimalware_hosts.txt",
	"https://hosts.ubuntu101.co.za/hosts",
	"https://warui.intaa.net/adhosts/hosts.txt",
	"https://raw.githubusercontent.com/mtxadmin/ublock/master/hosts.txt",
	"https://raw.githubusercontent.com/yous/YousList/master/hosts.txt",
	"https://raw.githubusercontent.com/anudeepND/youtubeadsblacklist/master/hosts.txt",
}
